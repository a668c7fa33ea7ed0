package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name          string
		defaultChoice string
		choiceValues  []string
		description   string
		expectedUsage string
	}{
		{
			name:          "DefaultLogFormatHighlighted",
			defaultChoice: "structured",
			choiceValues:  []string{"structured", "console"},
			description:   "Log output format (structured or console).",
			expectedUsage: "`<STRUCTURED|console>` Log output format (structured or console).",
		},
		{
			name:          "DefaultMatchesLaterChoice",
			defaultChoice: "console",
			choiceValues:  []string{"structured", "console"},
			description:   "Log output format.",
			expectedUsage: "`<structured|CONSOLE>` Log output format.",
		},
		{
			name:          "DescriptionOmitted",
			defaultChoice: "yes",
			choiceValues:  []string{"yes", "no"},
			description:   "",
			expectedUsage: "`<YES|no>`",
		},
		{
			name:          "DefaultMatchedCaseInsensitively",
			defaultChoice: "STRUCTURED",
			choiceValues:  []string{"structured", "console"},
			description:   "Log output format.",
			expectedUsage: "`<STRUCTURED|console>` Log output format.",
		},
		{
			name:          "DuplicateAndBlankChoicesDropped",
			defaultChoice: "console",
			choiceValues:  []string{"console", " console ", "", "structured"},
			description:   "Log output format.",
			expectedUsage: "`<CONSOLE|structured>` Log output format.",
		},
		{
			name:          "SurroundingWhitespaceTrimmed",
			defaultChoice: " console ",
			choiceValues:  []string{" structured ", " console "},
			description:   "  Log output format.  ",
			expectedUsage: "`<structured|CONSOLE>` Log output format.",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			renderedUsage := FormatChoiceUsage(testCase.defaultChoice, testCase.choiceValues, testCase.description)
			require.Equal(testInstance, testCase.expectedUsage, renderedUsage)
		})
	}
}
