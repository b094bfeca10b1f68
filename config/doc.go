// Package config loads service configuration with Viper.
//
// LoadConfig merges, lowest priority first: defaults, a config.yml found in
// the standard locations, the environment (a .env file is loaded first),
// and command-line flags bound with BindFlags.
//
// # Usage
//
//	fs := pflag.NewFlagSet("registry-api", pflag.ContinueOnError)
//	fs.Int("port", 8080, "port to listen on")
//	flags := config.BindFlags(fs, map[string]string{"port": "server.port"})
//	_ = fs.Parse(os.Args[1:])
//
//	var cfg AppConfig
//	err := config.LoadConfig("registry-api", &cfg,
//	    config.WithEnvAliases(map[string]string{"API_PORT": "server.port"}),
//	    config.WithFlags(flags))
//
// Every key declared by the config struct's mapstructure tags is also read
// from the environment under its upper-case underscore name, so
// SERVER_PORT sets server.port and CLIENT_TIMEOUT sets client.timeout.
package config
