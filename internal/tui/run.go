package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nabeel-hussain/ToDoApp/internal/client"
	"github.com/nabeel-hussain/ToDoApp/internal/normalizer"
)

// Run starts the full-screen program against the API behind c.
func Run(ctx context.Context, c *client.TaskClient, pageSize int) error {
	notify, changed := Notifier()
	ctrl := normalizer.NewController(c, c,
		normalizer.WithState(normalizer.Initial(pageSize)),
		normalizer.WithSubscriber(notify),
	)
	defer ctrl.Close()

	p := tea.NewProgram(New(ctrl, changed), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
