package setup

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
)

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
// 표준 출력은 셸이 eval하므로 폼은 Output(기본 stderr)에 그린다.
type HuhFormRunner struct {
	Output io.Writer
}

var _ FormRunner = (*HuhFormRunner)(nil)

// RunConfirm은 확인 프롬프트를 표시한다.
func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	out := h.Output
	if out == nil {
		out = os.Stderr
	}

	confirm := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirm),
	)).WithOutput(out)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("setup.RunConfirm: %w", err)
	}
	return confirm, nil
}
