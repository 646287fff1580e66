package quotes

import "math/rand"

// FallbackQuotes are shown whenever the remote API cannot be used.
var FallbackQuotes = []Quote{
	{Text: "The way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
	{Text: "Don't let yesterday take up too much of today.", Author: "Will Rogers"},
	{Text: "You learn more from failure than from success.", Author: "Unknown"},
	{Text: "It's not whether you get knocked down, it's whether you get up.", Author: "Vince Lombardi"},
	{Text: "If you are working on something that you really care about, you don't have to be pushed. The vision pulls you.", Author: "Steve Jobs"},
}

// Initial is the quote shown before the first fetch completes.
func Initial() Quote {
	return FallbackQuotes[0]
}

// RandomFallback picks a fallback quote uniformly at random.
func RandomFallback() Quote {
	return FallbackQuotes[rand.Intn(len(FallbackQuotes))]
}
