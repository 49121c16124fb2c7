package config

import "wikiqa/internal/spec"

// Published releases of the CMU question/answer dataset.
var Releases = map[string]string{
	"v1.1": "http://www.ark.cs.cmu.edu/QA-data/data/Question_Answer_Dataset_v1.1.tar.gz",
	"v1.2": "http://www.ark.cs.cmu.edu/QA-data/data/Question_Answer_Dataset_v1.2.tar.gz",
}

const (
	DefaultRelease       = "v1.2"
	DefaultFetcher       = FetcherHTTP
	DefaultArchiveName   = "wikianswer.tar.gz"
	DefaultExtractor     = ExtractorNative
	DefaultDatasetDir    = "Question_Answer_Dataset"
	DefaultDataFile      = "question_answer_pairs.txt"
	DefaultSubjectPrefix = "S"
	DefaultOutputPath    = "wikianswer_dataset.txt"

	DefaultHeaderLines    = 1
	DefaultQuestionColumn = 1
	DefaultAnswerColumn   = 2
)

// Fetcher and extractor implementations selectable from config.
const (
	FetcherHTTP     = "http"
	FetcherWget     = "wget"
	ExtractorNative = "native"
	ExtractorTar    = "tar"
)

// Default returns an unnormalized config equivalent to an empty version 1 file.
func Default() spec.Config {
	return spec.Config{Version: 1}
}
