// Package unpack defines the format-handler contract every concrete
// extractor satisfies, plus the verdict types the dispatcher consumes.
package unpack

// Produced is a single file an unpacker wrote into its target directory,
// paired with the labels it should carry as an independent task.
type Produced struct {
	Path   string
	Labels []string
}

// Verdict is the result of attempting to unpack a candidate. Exactly one
// of Success or Failure describes the outcome; Dispatch checks Failure's
// zero value (Reason == "") to distinguish them.
type Verdict struct {
	// ConsumedLength is the number of bytes, starting at the candidate
	// offset, the unpacker claims as its own. Only meaningful on success.
	ConsumedLength uint64
	Produced       []Produced
	NewLabels      []string

	// Failure fields. Reason != "" marks this verdict as a failure.
	Reason string
	Fatal  bool
}

// Failed reports whether v represents a failed unpack attempt.
func (v Verdict) Failed() bool {
	return v.Reason != ""
}

// Unpacker is the contract every format handler satisfies. It must not
// modify inputPath. On success every produced file lives under targetDir.
// On failure, partial output may be left in targetDir for the dispatcher
// to clean up.
type Unpacker interface {
	Unpack(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error)
}

// Func adapts a plain function to the Unpacker interface.
type Func func(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error)

// Unpack implements Unpacker.
func (f Func) Unpack(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error) {
	return f(inputPath, offset, targetDir, tempDir)
}
