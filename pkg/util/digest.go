package util

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"image"

	"github.com/google/uuid"
)

// Md5ThenHex is a quick hasher
func Md5ThenHex(value []byte) string {
	hasher := md5.New()
	hasher.Write(value)
	return hex.EncodeToString(hasher.Sum(nil))
}

// PixelDigest hashes the visible pixels of img row by row, so two images with
// the same content digest equally regardless of stride or origin.
func PixelDigest(img *image.RGBA) string {
	if img == nil {
		return ""
	}
	hasher := md5.New()
	b := img.Rect
	w := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y && w > 0; y++ {
		off := img.PixOffset(b.Min.X, y)
		hasher.Write(img.Pix[off : off+w])
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// JobID derives a stable UUID from the JSON form of value. Identical job
// descriptions map to the same ID.
func JobID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	hash := md5.Sum(raw)
	return uuid.NewMD5(uuid.NameSpaceURL, hash[:]).String()
}

// RunID is a random UUID for a single invocation
func RunID() string {
	return uuid.NewString()
}
