package cli

import (
	"fmt"
	"strconv"

	"github.com/BloggingApp/post-editor/internal/editor"
	"github.com/BloggingApp/post-editor/internal/listing"
	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/route"
	"github.com/spf13/cobra"
)

func newPostsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List, show, create, edit and delete posts",
	}

	cmd.AddCommand(newPostsListCmd(app))
	cmd.AddCommand(newPostsShowCmd(app))
	cmd.AddCommand(newPostsDeleteCmd(app))
	cmd.AddCommand(newPostsNewCmd(app))
	cmd.AddCommand(newPostsEditCmd(app))

	return cmd
}

type listOutput struct {
	Authenticated bool         `json:"authenticated"`
	Posts         []model.Post `json:"posts"`
}

func newPostsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.open(cmd, route.ListPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			view := listing.New(rt.logger, rt.posts, rt.bridge)
			defer view.Close()

			if err := view.Load(cmd.Context()); err != nil {
				return err
			}

			return writeJSON(cmd, app, listOutput{Authenticated: view.Authenticated(), Posts: view.Posts()})
		},
	}
}

func newPostsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			rt, err := app.open(cmd, route.ListPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			post, err := rt.posts.GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}

			return writeJSON(cmd, app, post)
		},
	}
}

func newPostsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			rt, err := app.open(cmd, route.ListPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			view := listing.New(rt.logger, rt.posts, rt.bridge)
			defer view.Close()

			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			if err := view.Delete(cmd.Context(), id); err != nil {
				return err
			}

			return writeJSON(cmd, app, listOutput{Authenticated: view.Authenticated(), Posts: view.Posts()})
		},
	}
}

type editFlags struct {
	title       string
	body        string
	description string
}

func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Post title")
	cmd.Flags().StringVar(&f.body, "body", "", "Post body")
	cmd.Flags().StringVar(&f.description, "description", "", "Post description")
}

// apply copies only the flags the user set onto the working copy.
func (f *editFlags) apply(cmd *cobra.Command, ed *editor.Editor) error {
	if cmd.Flags().Changed("title") {
		if err := ed.SetTitle(f.title); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("body") {
		if err := ed.SetBody(f.body); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("description") {
		if err := ed.SetDescription(f.description); err != nil {
			return err
		}
	}
	return nil
}

func newPostsNewCmd(app *App) *cobra.Command {
	flags := &editFlags{}
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a post (same as: open /posts/new)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, app, flags, route.NewPath)
		},
	}
	flags.register(cmd)
	return cmd
}

func newPostsEditCmd(app *App) *cobra.Command {
	flags := &editFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a post (same as: open /posts/edit/<id>)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runEditor(cmd, app, flags, route.EditPath(id))
		},
	}
	flags.register(cmd)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}
