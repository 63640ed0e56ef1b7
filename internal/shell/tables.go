package shell

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"platter/internal/library"
	"platter/internal/textutil"
)

func newWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

func renderTrackTable(tracks []*library.Track) string {
	tw := newWriter()
	tw.AppendHeader(table.Row{"ID", "Title", "Artist", "Album", "#", "Length"})
	for _, track := range tracks {
		tw.AppendRow(table.Row{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			track.TrackNo,
			textutil.FormatDuration(track.DurationSec),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return tw.Render()
}

func renderAlbumTable(albums []library.AlbumSummary) string {
	tw := newWriter()
	tw.AppendHeader(table.Row{"Album", "Artist", "Tracks", "Length"})
	for _, album := range albums {
		tw.AppendRow(table.Row{
			album.Album,
			album.Artist,
			album.TrackCount,
			textutil.FormatDuration(album.DurationSec),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}

func renderPlaylistTable(tracks []*library.Track) string {
	tw := newWriter()
	tw.AppendHeader(table.Row{"#", "Title", "Artist", "Length"})
	for i, track := range tracks {
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			track.Title,
			track.Artist,
			textutil.FormatDuration(track.DurationSec),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}
