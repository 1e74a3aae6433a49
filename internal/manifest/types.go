package manifest

// Project is the record written to <root>/.stackup.yaml.
type Project struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Template  string  `yaml:"template"`
	Generator string  `yaml:"generator"`
	CreatedAt string  `yaml:"created_at"`
	Client    *Client `yaml:"client,omitempty"`
}

// Client describes the generated front-end, when the template produces one.
type Client struct {
	Dir      string `yaml:"dir"`
	Scaffold string `yaml:"scaffold,omitempty"` // e.g. "vite/react"
	SDK      string `yaml:"sdk,omitempty"`
}
