package refresh

import (
	"bytes"
	"strings"
)

const (
	lineTerminatorConstant        = "\n"
	codeFenceLineConstant         = "```\n"
	commandEchoPrefixConstant     = "$ "
	displayLabelSeparatorConstant = " "
)

// ToolCommand describes a single documented tool invocation: the argument
// vector handed to the operating system and the display form echoed inside the
// regenerated block.
type ToolCommand struct {
	Arguments        []string
	DisplayName      string
	DisplayArguments []string
}

// DisplayLabel renders the user-facing invocation shown after the shell
// prompt. The display name falls back to the first executed argument when no
// explicit name is configured.
func (command ToolCommand) DisplayLabel() string {
	displayName := strings.TrimSpace(command.DisplayName)
	if len(displayName) == 0 && len(command.Arguments) > 0 {
		displayName = command.Arguments[0]
	}

	labelParts := make([]string, 0, len(command.DisplayArguments)+1)
	if len(displayName) > 0 {
		labelParts = append(labelParts, displayName)
	}
	labelParts = append(labelParts, command.DisplayArguments...)
	return strings.Join(labelParts, displayLabelSeparatorConstant)
}

// SplitAtMarker divides document content at the first occurrence of the
// marker. The returned prefix excludes the marker itself; callers re-emit the
// marker ahead of regenerated blocks. The boolean reports whether the marker
// was present.
func SplitAtMarker(content []byte, marker string) ([]byte, bool) {
	markerIndex := bytes.Index(content, []byte(marker))
	if markerIndex < 0 {
		return content, false
	}
	return content[:markerIndex], true
}

// RenderCommandBlock produces the fenced block appended for one executed
// command: a separating blank line, the opening fence, the echoed invocation,
// the captured standard output verbatim, and the closing fence.
func RenderCommandBlock(command ToolCommand, capturedOutput []byte) []byte {
	var blockBuffer bytes.Buffer
	blockBuffer.WriteString(lineTerminatorConstant)
	blockBuffer.WriteString(codeFenceLineConstant)
	blockBuffer.WriteString(commandEchoPrefixConstant)
	blockBuffer.WriteString(command.DisplayLabel())
	blockBuffer.WriteString(lineTerminatorConstant)
	blockBuffer.Write(capturedOutput)
	blockBuffer.WriteString(codeFenceLineConstant)
	return blockBuffer.Bytes()
}
