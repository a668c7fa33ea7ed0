package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/helpsync/internal/utils/path"
)

const (
	expanderHomeDirectoryConstant        = "/home/maintainer"
	expanderRelativeDocumentConstant     = "notes/README.md"
	expanderLookupFailureMessageConstant = "home directory unavailable"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name           string
		candidatePath  string
		expectedOutput string
	}{
		{name: "bare_tilde_becomes_home", candidatePath: "~", expectedOutput: expanderHomeDirectoryConstant},
		{name: "tilde_slash_joins_home", candidatePath: "~/" + expanderRelativeDocumentConstant, expectedOutput: filepath.Join(expanderHomeDirectoryConstant, expanderRelativeDocumentConstant)},
		{name: "user_qualified_tilde_preserved", candidatePath: "~other/README.md", expectedOutput: "~other/README.md"},
		{name: "absolute_path_preserved", candidatePath: "/srv/README.md", expectedOutput: "/srv/README.md"},
		{name: "empty_path_preserved", candidatePath: "", expectedOutput: ""},
	}

	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return expanderHomeDirectoryConstant, nil
	})

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedOutput, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderKeepsPathWhenLookupFails(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New(expanderLookupFailureMessageConstant)
	})

	require.Equal(testInstance, "~/notes", expander.Expand("~/notes"))
}

func TestHomeExpanderCachesLookup(testInstance *testing.T) {
	lookupCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookupCount++
		return expanderHomeDirectoryConstant, nil
	})

	require.Equal(testInstance, expanderHomeDirectoryConstant, expander.Expand("~"))
	require.Equal(testInstance, expanderHomeDirectoryConstant, expander.Expand("~"))
	require.Equal(testInstance, 1, lookupCount)
}
