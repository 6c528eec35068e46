package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dtroode/novoice/internal/model"
)

func renderFeedTable(posts []model.Post) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Author", "Length", "Posted", "Liked"})

	for i, post := range posts {
		liked := ""
		if post.Liked {
			liked = "♥"
		}
		tw.AppendRow(table.Row{
			i + 1,
			post.Title,
			post.Author.Name,
			formatDuration(post.Duration),
			post.CreatedAt.Format("2006-01-02 15:04"),
			liked,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
