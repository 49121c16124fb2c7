package spec

// Config is the on-disk schema of a wikiqa build configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Source    SourceConfig    `yaml:"source"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Output    OutputConfig    `yaml:"output"`
	Catalog   CatalogConfig   `yaml:"catalog"`
}

type SourceConfig struct {
	Release        string `yaml:"release"`
	URL            string `yaml:"url"`
	Fetcher        string `yaml:"fetcher"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type WorkspaceConfig struct {
	Dir         string `yaml:"dir"`
	ArchiveName string `yaml:"archive_name"`
	Extractor   string `yaml:"extractor"`
}

type DatasetConfig struct {
	Dir            string `yaml:"dir"`
	DataFile       string `yaml:"data_file"`
	SubjectPrefix  string `yaml:"subject_prefix"`
	Encoding       string `yaml:"encoding"`
	HeaderLines    *int   `yaml:"header_lines"`
	QuestionColumn *int   `yaml:"question_column"`
	AnswerColumn   *int   `yaml:"answer_column"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}
