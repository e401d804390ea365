// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jeranaias/rigrun-elements/internal/ui/components"
)

// Question is the user turn the demo pretends to answer.
const Question = "Why does my Go program deadlock when I range over a channel?"

// ReasoningResponse is replayed as a reasoning model's raw output.
const ReasoningResponse = `<think>
The user ranges over a channel and the program deadlocks. A **range** loop
over a channel only ends when the channel is closed.

Likely causes:
- the producer never calls close(ch)
- the producer and the consumer run on the same goroutine
- an unbuffered send blocks because nobody is receiving yet

The fix is to close the channel from the sending side once all values are
sent, usually with a defer in the producer goroutine.
</think>

A for-range over a channel keeps receiving until the channel is **closed**.
If nothing closes it, the loop waits forever and the runtime reports
"all goroutines are asleep".

Close the channel from the sender once it is done:

` + "```go" + `
go func() {
	defer close(ch)
	for _, v := range values {
		ch <- v
	}
}()
` + "```" + `
`

// CodeSample is shown in the code block element.
const CodeSample = `func produce(values []int) <-chan int {
	ch := make(chan int)
	go func() {
		defer close(ch)
		for _, v := range values {
			ch <- v
		}
	}()
	return ch
}

func main() {
	for v := range produce([]int{1, 2, 3}) {
		fmt.Println(v)
	}
}`

// ShimmerText is the loading label.
const ShimmerText = "Generating response..."

// ImagePrompt titles the image section.
const ImagePrompt = "a watercolor gopher reading by a lantern"

// ChainScript returns the steps replayed by the chain demo. The first step
// starts active and the rest pending.
func ChainScript(img *components.GeneratedImage) []components.Step {
	return []components.Step{
		{
			Label:         "Searching for channel deadlock causes",
			Description:   "go range over channel deadlock",
			SearchResults: []string{"go.dev", "stackoverflow.com", "gobyexample.com"},
		},
		{
			Label:       "Reading sources",
			Description: "Effective Go: channels",
			Icon:        "~",
		},
		{
			Label:        "Drawing an illustration",
			Icon:         "#",
			Image:        img,
			ImageCaption: ImagePrompt,
		},
		{
			Label: "Drafting answer",
			Text:  "close the channel from the sender",
		},
	}
}

// SampleImage renders a small gradient PNG standing in for a generated
// image.
func SampleImage() components.GeneratedImage {
	const w, h = 48, 32
	from, _ := colorful.Hex("#7c3aed")
	to, _ := colorful.Hex("#06b6d4")

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := from.BlendLab(to, float64(x)/float64(w-1)).Clamped()
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return components.GeneratedImage{}
	}
	return components.GeneratedImage{
		Base64:    base64.StdEncoding.EncodeToString(buf.Bytes()),
		MediaType: components.DefaultImageMediaType,
	}
}
