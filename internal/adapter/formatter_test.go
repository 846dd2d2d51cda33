package adapter

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/kapu/lastfm-discord-bot-go/internal/domain"
)

func TestNowPlayingEmbed(t *testing.T) {
	f := NewFormatter()
	track := &domain.Track{
		Artist:     "Radiohead",
		Album:      "Kid A",
		Title:      "Idioteque",
		URL:        "https://www.last.fm/music/Radiohead/_/Idioteque",
		NowPlaying: true,
	}

	embed := f.NowPlayingEmbed("someone", track, "https://img.example/cover.jpg", "https://open.spotify.com/track/x")
	if embed.Title != "Now playing" {
		t.Fatalf("unexpected title: %q", embed.Title)
	}
	if embed.Thumbnail == nil || embed.Thumbnail.URL != "https://img.example/cover.jpg" {
		t.Fatalf("expected cover thumbnail")
	}
	if len(embed.Fields) != 1 || !strings.Contains(embed.Fields[0].Value, "open.spotify.com") {
		t.Fatalf("expected spotify link field: %+v", embed.Fields)
	}

	track.NowPlaying = false
	embed = f.NowPlayingEmbed("someone", track, "", "")
	if embed.Title != "Last scrobble" {
		t.Fatalf("unexpected title for past scrobble: %q", embed.Title)
	}
	if embed.Thumbnail != nil {
		t.Fatalf("no thumbnail expected without cover")
	}
	if len(embed.Fields) != 0 {
		t.Fatalf("no fields expected without spotify link")
	}
}

func TestCoverNotFoundEmbedListsAttempts(t *testing.T) {
	f := NewFormatter()
	embed := f.CoverNotFoundEmbed([]string{"Björk - Post", "Bjork - Post"})

	if embed.Title != MsgCoverNotFoundTitle {
		t.Fatalf("unexpected title: %q", embed.Title)
	}
	if !strings.Contains(embed.Description, "Björk - Post") || !strings.Contains(embed.Description, "Bjork - Post") {
		t.Fatalf("attempted forms missing from description: %q", embed.Description)
	}
}

func TestChartReplyAttachesImage(t *testing.T) {
	f := NewFormatter()
	reply := f.ChartReply("someone", domain.PeriodWeek, 3, []byte{0xFF, 0xD8})

	if len(reply.Files) != 1 || reply.Files[0].Name != "chart.jpg" {
		t.Fatalf("expected chart.jpg attachment: %+v", reply.Files)
	}
	if len(reply.Embeds) != 1 || reply.Embeds[0].Image.URL != "attachment://chart.jpg" {
		t.Fatalf("embed must reference the attachment: %+v", reply.Embeds)
	}
}

func TestCountdownReply(t *testing.T) {
	f := NewFormatter()

	reply := f.CountdownReply(5)
	if reply.Content != "**5**" {
		t.Fatalf("unexpected content: %q", reply.Content)
	}
	row, ok := reply.Components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("expected actions row, got %T", reply.Components[0])
	}
	button, ok := row.Components[0].(discordgo.Button)
	if !ok {
		t.Fatalf("expected button, got %T", row.Components[0])
	}
	if button.CustomID != "countdown:4" {
		t.Fatalf("unexpected custom id: %q", button.CustomID)
	}

	done := f.CountdownReply(0)
	if done.Content != MsgCountdownDone {
		t.Fatalf("unexpected final content: %q", done.Content)
	}
	if len(done.Components) != 0 {
		t.Fatalf("finished countdown must drop the button")
	}
}
