package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Dir               string `usage:"data directory, one document per .json file"`
	ListField         string `usage:"name of the array field holding the records"`
	KeyField          string `usage:"record field used to locate records on remove"`
	LogLevel          string `usage:"log level: debug, info, warn or error"`
	ApiKey            string `usage:"API key, empty disables authentication"`
	ApiSecret         string `usage:"API secret"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	Watch             bool   `usage:"reload documents edited by other programs"`
	RateLimit         int    `usage:"requests per second allowed per client, 0 disables"`
	RateBurst         int    `usage:"requests a client may burst over the rate limit"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:          ":8080",
		Dir:               "data",
		ListField:         "list",
		KeyField:          "id",
		LogLevel:          "info",
		EnableCompression: true,
		RateBurst:         20,
		ShowBanner:        true,
	}
}
