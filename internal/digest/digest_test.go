package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFormat(t *testing.T) {
	msgs := []Message{
		{
			ID:             "2",
			SenderUsername: "bob",
			SenderNickname: "bob",
			Content:        "second",
			Date:           time.Date(2021, 3, 4, 6, 0, 0, 0, time.UTC),
			AttachmentURLs: []string{"https://cdn.example/a.png"},
		},
		{
			ID:             "1",
			SenderUsername: "ann",
			SenderNickname: "Annie",
			Content:        "first",
			Date:           time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC),
		},
	}

	want := "MESSAGE 1\nFROM ann (Annie) ON 2021-03-04 AT 05:06:07:\nfirst" +
		"\n\n" +
		"MESSAGE 2\nFROM bob ON 2021-03-04 AT 06:00:00:\nsecond\nhttps://cdn.example/a.png"
	assert.Equal(t, want, DefaultFormat.Format(msgs))
	assert.Equal(t, "2", msgs[0].ID, "input order is left alone")
}

func TestDefaultFormatEmpty(t *testing.T) {
	assert.Empty(t, DefaultFormat.Format(nil))
}

func TestDefaultFormatUsesUTC(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	msgs := []Message{{ID: "9", SenderUsername: "c", Date: time.Date(2021, 1, 1, 1, 0, 0, 0, zone)}}
	assert.Equal(t, "MESSAGE 9\nFROM c ON 2020-12-31 AT 22:00:00:\n", DefaultFormat.Format(msgs))
}
