package cli

import (
	"github.com/BloggingApp/post-editor/internal/editor"
	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/spf13/cobra"
)

type editorOutput struct {
	Mode          string     `json:"mode"`
	State         string     `json:"state"`
	Authenticated bool       `json:"authenticated"`
	Post          model.Post `json:"post"`
	Path          string     `json:"path"`
}

func newOpenCmd(app *App) *cobra.Command {
	flags := &editFlags{}
	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Open the editor at a route (/posts/new or /posts/edit/<id>) and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, app, flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func runEditor(cmd *cobra.Command, app *App, flags *editFlags, path string) error {
	rt, err := app.open(cmd, path)
	if err != nil {
		return err
	}
	defer rt.Close()

	ed, err := editor.New(editor.Deps{
		Logger:    rt.logger,
		Posts:     rt.posts,
		Session:   rt.bridge,
		Navigator: rt.history,
	}, path)
	if err != nil {
		return err
	}
	defer ed.Close()

	ctx := cmd.Context()
	if err := ed.Load(ctx); err != nil {
		return err
	}
	if err := flags.apply(cmd, ed); err != nil {
		return err
	}

	saveErr := ed.Save(ctx)

	out := editorOutput{
		Mode:          ed.Mode().String(),
		State:         ed.State().String(),
		Authenticated: ed.Authenticated(),
		Post:          ed.Post(),
		Path:          rt.history.CurrentPath(),
	}
	if err := writeJSON(cmd, app, out); err != nil {
		return err
	}

	return saveErr
}
