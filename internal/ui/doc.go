// Package ui contains the Bubble Tea program that draws the directory tree.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are mapped to nav.Command values by KeyMap and applied to
//     the nav.Controller synchronously. Filesystem reads happen inside that
//     call; no tea.Cmd ever touches the tree.
//   - A tick only ages the status message. It never rescans the filesystem.
//
// Drawing:
//   - View asks internal/render for the rows that fit between the header (the
//     selected path) and the status line, pads short trees with "~" rows, and
//     styles each row with the theme.
//   - The finished frame is cached and rebuilt only when the controller marks
//     itself dirty or the terminal is resized.
package ui
