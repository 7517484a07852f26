// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render writes cleanup steps and their outcomes for the terminal.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/cleanups/cleanup"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	indexStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

const (
	successMark = "✔"
	failedMark  = "✘"
)

// Steps writes the ordered list of step labels.
func Steps(w io.Writer, labels []string) error {
	sb := strings.Builder{}
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%d cleanup step(s):", len(labels))))
	sb.WriteString("\n")

	width := len(fmt.Sprint(len(labels)))

	for i, l := range slices.All(labels) {
		sb.WriteString(indexStyle.Render(fmt.Sprintf("%*d.", width, i+1)))
		sb.WriteString(" ")
		sb.WriteString(l)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// Results writes one line per operation and a summary line.
func Results(w io.Writer, results cleanup.Results) error {
	sb := strings.Builder{}

	for res := range slices.Values(results) {
		switch res.Status {
		case cleanup.StatusSuccess:
			sb.WriteString(successStyle.Render(successMark))
		default:
			sb.WriteString(failedStyle.Render(failedMark))
		}

		sb.WriteString(" ")
		sb.WriteString(res.Label)
		sb.WriteString("\n")
	}

	failed := len(results.Failed())

	summary := fmt.Sprintf("%d of %d cleanup step(s) succeeded", len(results)-failed, len(results))
	if failed > 0 {
		summary = failedStyle.Render(fmt.Sprintf("%d of %d cleanup step(s) failed", failed, len(results)))
	}

	sb.WriteString(summary)
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())

	return err
}
