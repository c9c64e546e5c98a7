package unpack

// lzmaDictSizeMarkers are the first-byte "properties" values the two
// registered LZMA signatures anchor on. Real LZMA streams encode
// lc/lp/pb into this byte; in practice almost every hit from a raw
// signature scan is a false positive (the byte also occurs constantly in
// unrelated binary data), which is why this handler never actually
// attempts decompression.
var lzmaDictSizeMarkers = map[byte]bool{
	0x5d: true,
	0x6d: true,
}

// LZMA validates only the candidate's first byte against the dictionary
// size marker table and then always fails. It exists to exercise the
// dispatcher's false-positive cleanup path: a production LZMA decoder is
// out of scope (see the reference handler notes), and real-world scans
// show the large majority of LZMA signature hits are not LZMA streams at
// all.
var LZMA = Func(func(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error) {
	data, err := ReadRemaining(inputPath, offset)
	if err != nil {
		return Verdict{}, err
	}
	if len(data) < 1 || !lzmaDictSizeMarkers[data[0]] {
		return Verdict{Reason: "lzma stream rejected: unrecognized properties byte"}, nil
	}

	return Verdict{Reason: "lzma stream rejected: unsupported properties byte"}, nil
})
