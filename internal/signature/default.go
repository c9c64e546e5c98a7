package signature

import "github.com/knilch0r/binaryanalysis-ng/internal/unpack"

// Default returns the reference registry: the seven format families this
// engine ships a handler for, enough to drive the dispatcher end to end.
func Default() *Registry {
	return NewRegistry([]Signature{
		{
			Key:         "gzip",
			Pattern:     []byte{0x1f, 0x8b},
			DisplayName: "gzip",
			Handler:     unpack.Gzip,
		},
		{
			Key:         "zstd",
			Pattern:     []byte{0x28, 0xb5, 0x2f, 0xfd},
			DisplayName: "zstd",
			Handler:     unpack.Zstd,
		},
		{
			Key:         "tar",
			Pattern:     []byte("ustar"),
			IntraOffset: 0x101,
			DisplayName: "tar",
			Handler:     unpack.Tar,
		},
		{
			Key:         "zip",
			Pattern:     []byte{'P', 'K', 0x03, 0x04},
			DisplayName: "zip",
			Handler:     unpack.Zip,
		},
		{
			Key:         "bzip2",
			Pattern:     []byte("BZh"),
			DisplayName: "bzip2",
			Handler:     unpack.Bzip2,
		},
		{
			Key:         "png",
			Pattern:     []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a},
			DisplayName: "png",
			Handler:     unpack.PNG,
		},
		{
			Key:         "lzma-5d",
			Pattern:     []byte{0x5d, 0x00, 0x00},
			DisplayName: "lzma",
			Handler:     unpack.LZMA,
		},
		{
			Key:         "lzma-6d",
			Pattern:     []byte{0x6d, 0x00, 0x00},
			DisplayName: "lzma",
			Handler:     unpack.LZMA,
		},
	})
}
