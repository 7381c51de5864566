// Package qrcode builds menu URLs and QR image references. Rendering is
// delegated to an external image service; nothing here draws pixels.
package qrcode

import (
	"fmt"
	"net/url"
)

const imageService = "https://api.qrserver.com/v1/create-qr-code/"

// MenuURL is the public menu address a QR code points customers at.
func MenuURL(baseURL string, restaurantID uint) string {
	return fmt.Sprintf("%s/menu/%d", baseURL, restaurantID)
}

// ImageURL returns a 300x300 QR image reference encoding data.
func ImageURL(data string) string {
	return imageService + "?size=300x300&data=" + url.QueryEscape(data)
}
