package createproject

type Config struct {
	SuccessMessage string
}

func DefaultConfig() *Config {
	return &Config{SuccessMessage: "Project created successfully"}
}
