// Package listview provides a virtually scrolled list for Bubble Tea programs.
//
// Only the rows inside the viewport are rendered, so a list that keeps growing
// as pages arrive costs O(viewport height) per frame. Key features:
//   - Arrow, paging and vim-style navigation through bubbles/key bindings
//   - SetItems keeps the cursor when rows are appended
//   - NearEnd lets a caller trigger infinite scroll before the cursor hits the bottom
package listview
