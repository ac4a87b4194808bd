package artifact

import (
	"context"
	"math/rand"
)

// Generator turns a player-authored prompt into an image URL. The
// coordinator only ever sees the resulting URL; how the image is made
// is the provider's business.
type Generator interface {
	Generate(ctx context.Context, promptText string) (string, error)
}

// FallbackImages are served when generation fails so a round can always
// proceed with something to vote on.
var FallbackImages = []string{
	"https://media.giphy.com/media/3o7TKr3nzbh5WgCFxe/giphy.gif",
	"https://media.giphy.com/media/l0MYt5jPR6QX5pnqM/giphy.gif",
	"https://media.giphy.com/media/3oEjHAUOqG3lSS0f1C/giphy.gif",
	"https://media.giphy.com/media/xT0xeJpnrWC4XWblEk/giphy.gif",
	"https://media.giphy.com/media/l46CyJmS9N2fpmqeQ/giphy.gif",
}

func Fallback(rng *rand.Rand) string {
	return FallbackImages[rng.Intn(len(FallbackImages))]
}
