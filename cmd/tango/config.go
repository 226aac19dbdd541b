package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tango/internal/config"
	"github.com/verte-zerg/tango/internal/model"
	"github.com/verte-zerg/tango/internal/progress"
	"github.com/verte-zerg/tango/internal/study"
	"github.com/verte-zerg/tango/internal/vocab"
)

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tango configuration
# Uncomment a value to enable it. CLI flags override config values.

[study]
# auto-play-interval = %q   # Delay between cards in auto-play
# speak-on-flip = true        # Pronounce the word when a card is revealed

[test]
# count = %d                  # Questions per test (0: every word)
# types = [%s]
# order = %q             # random or sequential
# history-cap = %d            # Test results kept per week

[vocabulary]
# dir = %q
# retry-attempts = %d
# retry-delay = %q

[speech]
# command = "say -v Kyoko"    # or "espeak-ng -v ja"

[storage]
# quota-bytes = %d

[log]
# level = %q
# format = %q                # text or json
# file = %q
`,
		study.DefaultAutoPlayInterval.String(),
		defaultCount,
		quotedTypes(),
		defaultOrder,
		progress.DefaultHistoryCap,
		config.DefaultVocabularyDir(),
		vocab.DefaultRetryAttempts,
		vocab.DefaultRetryDelay.String(),
		defaultQuotaBytes,
		defaultLogLevel,
		defaultLogFormat,
		config.DefaultLogPath(),
	)
}

func quotedTypes() string {
	return strings.Join(lo.Map(model.AllQuestionTypes(), func(qt model.QuestionType, _ int) string {
		return strconv.Quote(string(qt))
	}), ", ")
}
