package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/vvatanabe/shiptracker"
)

func printMessageWithData(w io.Writer, message string, data any) {
	dump, err := marshalIndent(data)
	if err != nil {
		printError(w, err)
		return
	}
	fmt.Fprintf(w, "%s%s\n", message, dump)
}

func marshalIndent(v any) ([]byte, error) {
	dump, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return dump, nil
}

func printError(w io.Writer, err any) {
	fmt.Fprintf(w, "ERROR: %v\n", err)
}

func printShipmentNotFound(w io.Writer, id int) {
	printError(w, fmt.Sprintf("Shipment [%d] not found!", id))
}

// printPublisher prints every notification as it is published.
type printPublisher struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *printPublisher) Publish(n shiptracker.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	printMessageWithData(p.w, fmt.Sprintf("Notification [%d] %s:\n", n.Seq, n.Type), n.Event)
}
