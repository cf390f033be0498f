package encode

import (
	"github.com/klauspost/compress/zstd"
)

var (
	zstdEnc *zstd.Encoder
	zstdDec *zstd.Decoder
)

func init() {
	var err error
	zstdEnc, err = zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	zstdDec, err = zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
}

// Compress returns the zstd-compressed form of data.
func Compress(data []byte) []byte {
	return zstdEnc.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	return zstdDec.DecodeAll(data, nil)
}
