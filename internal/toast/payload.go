package toast

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// DefaultProgressLabel is used when a show call does not name its progress bar.
const DefaultProgressLabel = "Progress"

// ProgressContent is what a progress toast displays.
type ProgressContent struct {
	Title    string
	Subtitle string
	Status   string
	Progress int
	Label    string
}

// CompletionContent is what a completion toast displays.
type CompletionContent struct {
	Title    string
	Subtitle string
	Message  string
}

// ProgressElement is the progress bar of a toast.
type ProgressElement struct {
	Title               string `xml:"title,attr"`
	Value               string `xml:"value,attr"`
	ValueStringOverride string `xml:"valueStringOverride,attr"`
	Status              string `xml:"status,attr"`
}

// Payload is the structured markup submitted to the notification service.
type Payload struct {
	Lines    []string
	Progress *ProgressElement
}

type toastXML struct {
	XMLName xml.Name  `xml:"toast"`
	Visual  visualXML `xml:"visual"`
}

type visualXML struct {
	Binding bindingXML `xml:"binding"`
}

type bindingXML struct {
	Template string           `xml:"template,attr"`
	Text     []string         `xml:"text"`
	Progress *ProgressElement `xml:"progress,omitempty"`
}

// Markup renders the payload as ToastGeneric XML.
func (p Payload) Markup() (string, error) {
	doc := toastXML{
		Visual: visualXML{
			Binding: bindingXML{
				Template: "ToastGeneric",
				Text:     p.Lines,
				Progress: p.Progress,
			},
		},
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render toast markup: %w", err)
	}
	return string(out), nil
}

// ProgressPayload builds the payload for a progress toast.
func ProgressPayload(c ProgressContent) Payload {
	progress := clampProgress(c.Progress)
	label := c.Label
	if label == "" {
		label = DefaultProgressLabel
	}
	return Payload{
		Lines: []string{c.Title, c.Subtitle, c.Status},
		Progress: &ProgressElement{
			Title:               label,
			Value:               strconv.FormatFloat(float64(progress)/100, 'f', -1, 64),
			ValueStringOverride: strconv.Itoa(progress) + "%",
			Status:              c.Status,
		},
	}
}

// CompletionPayload builds the payload for a completion toast. It has no
// progress bar; the message takes the place of the status line.
func CompletionPayload(c CompletionContent) Payload {
	return Payload{
		Lines: []string{c.Title, c.Subtitle, c.Message},
	}
}

func clampProgress(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
