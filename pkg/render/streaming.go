package render

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vango-dev/admindash/pkg/vdom"
)

// ErrStreamClosed is returned when writing to a stream after Close.
var ErrStreamClosed = errors.New("render: stream closed")

// swapScript moves a filled template into its slot and drops the template.
const swapScript = `<script>(function(){var t=document.getElementById("%s"),s=document.getElementById("%s");if(t&&s){s.replaceWith(t.content.cloneNode(true));t.remove();}})();</script>`

// Stream writes a document incrementally, flushing after every section for
// faster time-to-first-byte. Slots let a placeholder be shown first and
// replaced by later content in the same response.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	*Renderer
	w       io.Writer
	flusher http.Flusher
	opened  bool
	closed  bool
	slots   map[string]bool
}

// NewStream creates a stream that writes to w. If w implements
// http.Flusher, content is flushed after each write.
func NewStream(w io.Writer, config RendererConfig) *Stream {
	flusher, _ := w.(http.Flusher)
	return &Stream{
		Renderer: NewRenderer(config),
		w:        w,
		flusher:  flusher,
		slots:    make(map[string]bool),
	}
}

// Open writes the document head and opening body tag.
func (s *Stream) Open(doc Document) error {
	if s.closed {
		return ErrStreamClosed
	}
	if s.opened {
		return nil
	}
	if err := s.writeOpen(s.w, doc); err != nil {
		return err
	}
	s.opened = true
	s.flush()
	return nil
}

// Write renders node into the body and flushes.
func (s *Stream) Write(node *vdom.VNode) error {
	if s.closed {
		return ErrStreamClosed
	}
	if err := s.RenderToWriter(s.w, node); err != nil {
		return err
	}
	s.flush()
	return nil
}

// Slot renders placeholder wrapped in an element that a later Fill with the
// same id replaces.
func (s *Stream) Slot(id string, placeholder *vdom.VNode) error {
	if s.closed {
		return ErrStreamClosed
	}
	if _, err := fmt.Fprintf(s.w, `<div id="%s" data-slot="pending">`, escapeAttr(slotID(id))); err != nil {
		return err
	}
	if err := s.RenderToWriter(s.w, placeholder); err != nil {
		return err
	}
	if _, err := io.WriteString(s.w, "</div>"); err != nil {
		return err
	}
	s.slots[id] = true
	s.flush()
	return nil
}

// Fill sends content for a slot opened with Slot. Filling an unknown slot
// writes the content inline.
func (s *Stream) Fill(id string, content *vdom.VNode) error {
	if s.closed {
		return ErrStreamClosed
	}
	if !s.slots[id] {
		return s.Write(content)
	}
	tid := templateID(id)
	if _, err := fmt.Fprintf(s.w, `<template id="%s">`, escapeAttr(tid)); err != nil {
		return err
	}
	if err := s.RenderToWriter(s.w, content); err != nil {
		return err
	}
	if _, err := io.WriteString(s.w, "</template>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, swapScript, tid, slotID(id)); err != nil {
		return err
	}
	delete(s.slots, id)
	s.flush()
	return nil
}

// Pending reports whether the slot has been opened but not filled.
func (s *Stream) Pending(id string) bool {
	return s.slots[id]
}

// Close writes the closing body and html tags.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.opened {
		return nil
	}
	if err := s.writeClose(s.w); err != nil {
		return err
	}
	s.flush()
	return nil
}

// flush flushes the writer if it supports flushing.
func (s *Stream) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

func slotID(id string) string     { return "slot-" + id }
func templateID(id string) string { return "fill-" + id }

// FlushableWriter wraps an io.Writer with flush counting.
// This is useful for testing streaming behavior without using http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
