// Package detail implements the lazily loaded Pokémon detail screen.
//
// Nothing is fetched until the screen is opened. Key features:
//   - Initial, Loading, Success and Error states with an immediate spinner
//   - Inline retry with the 'r' key after a failed load
//   - 'esc' emits BackMsg so the owning program can pop its navigation stack
//   - Base stats drawn as static bars with bubbles/progress
package detail
