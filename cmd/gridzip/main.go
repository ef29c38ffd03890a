// gridzip splits an image into a grid of PNG pieces and packs them
// into a ZIP archive.
//
// Usage:
//
//	gridzip split photo.png --rows 3 --cols 3 -o grid.zip
//	gridzip split https://example.com/photo.jpg --canvas --auto-center
//	gridzip pack a.png b.png -o bundle.zip
//	gridzip inspect grid.zip --verify
package main

func main() {
	Execute()
}
