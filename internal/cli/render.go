package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cubekit/cubekit"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerStyles maps each cube color to a styled cell.
var stickerStyles = map[cubekit.Color]lipgloss.Style{
	cubekit.White:  lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")),
	cubekit.Yellow: lipgloss.NewStyle().Background(lipgloss.Color("226")).Foreground(lipgloss.Color("0")),
	cubekit.Green:  lipgloss.NewStyle().Background(lipgloss.Color("34")).Foreground(lipgloss.Color("255")),
	cubekit.Blue:   lipgloss.NewStyle().Background(lipgloss.Color("27")).Foreground(lipgloss.Color("255")),
	cubekit.Red:    lipgloss.NewStyle().Background(lipgloss.Color("196")).Foreground(lipgloss.Color("255")),
	cubekit.Orange: lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0")),
}

// renderSticker draws a single colored cell. Unknown colors render as "??"
// so corrupt states stay visible instead of crashing the renderer.
func renderSticker(c cubekit.Color) string {
	style, ok := stickerStyles[c]
	if !ok {
		return errorStyle.Render("??")
	}
	return style.Render(" " + c.String())
}

// renderRow draws three stickers of a face row.
func renderRow(colors []cubekit.Color, row int) string {
	var b strings.Builder
	for col := 0; col < 3; col++ {
		b.WriteString(renderSticker(colors[row*3+col]))
	}
	return b.String()
}

// RenderState draws the cube as a colored unfolded net:
//
//	      U
//	L  F  R  B
//	      D
func RenderState(state cubekit.CubeState) string {
	faces := map[cubekit.Face][]cubekit.Color{}
	for _, f := range []cubekit.Face{cubekit.FaceU, cubekit.FaceD, cubekit.FaceF, cubekit.FaceB, cubekit.FaceR, cubekit.FaceL} {
		fs, ok := state.FaceState(f)
		if !ok {
			return errorStyle.Render("state is missing face " + string(f))
		}
		faces[f] = fs.Colors
	}

	pad := strings.Repeat(" ", 6)
	var b strings.Builder
	for row := 0; row < 3; row++ {
		b.WriteString(pad + renderRow(faces[cubekit.FaceU], row) + "\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(renderRow(faces[cubekit.FaceL], row))
		b.WriteString(renderRow(faces[cubekit.FaceF], row))
		b.WriteString(renderRow(faces[cubekit.FaceR], row))
		b.WriteString(renderRow(faces[cubekit.FaceB], row))
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(pad + renderRow(faces[cubekit.FaceD], row) + "\n")
	}
	return b.String()
}

// renderSummary draws the one-line status under a rendered cube.
func renderSummary(state cubekit.CubeState) string {
	if state.Solved {
		return solvedStyle.Render("SOLVED")
	}

	phase := cubekit.DetectPhase(state)
	progress := cubekit.Progress(state)
	done := 0
	for _, complete := range []bool{
		progress.WhiteCross, progress.TopLayer, progress.MiddleLayer,
		progress.BottomCross, progress.CornersPositioned, progress.CornersOriented,
	} {
		if complete {
			done++
		}
	}
	return fmt.Sprintf("%s  %s",
		statusStyle.Render(fmt.Sprintf("%d moves", len(state.MoveHistory))),
		statusStyle.Render(fmt.Sprintf("phase: %s (%d/6 stages)", phase.DisplayName(), done)))
}
