package config

// Store describes the backing connection of one document. The driver selects
// the dialect: "sqlite" documents live in a single file addressed by Path,
// while "postgres" and "mysql" documents are addressed by DSN.
type Store struct {
	Driver string `envconfig:"DRIVER" default:"sqlite"`
	Path   string `envconfig:"PATH" default:"tally.db"`
	DSN    string `envconfig:"DSN"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[tally]"`
}

type App struct {
	Env   string `envconfig:"APP_ENV" default:"development"`
	Store *Store `envconfig:"STORE"`
	Log   *Log   `envconfig:"LOG"`
}
