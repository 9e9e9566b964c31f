package config

// ConfigPath is the default config file location, relative to the working
// directory of the bot process.
const ConfigPath = "config.yaml"
