/*
Package settings controls reading configuration from environment and assigning defaults
*/
package settings

import (
	"fmt"
	"log" // cannot use zerolog as log options not initialised
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix all environment overrides must carry, e.g. ST.VOTES.FILTER_CAPACITY or ST__VOTES__FILTER_CAPACITY
const EnvPrefix = "ST"

var Settings *STSettings
var Votes *STVotes
var Likes *STLikes
var Store *STStore
var Uploads *STUploads

type STVotes struct {
	// number of addressable bits in the duplicate vote filter
	FilterCapacity uint64 `koanf:"filter_capacity"`
	// number of hash functions applied per vote key
	FilterHashCount uint `koanf:"filter_hash_count"`
	// swap in an empty filter on this interval, 0 keeps votes until restart
	FilterRotateInterval time.Duration `koanf:"filter_rotate_interval"`
}

type STLikes struct {
	// bytes to allocate for the recent like throttle, 0 disables it
	RecentCacheBytes HumanReadableBytes `koanf:"recent_cache_bytes"`
}

type STTrending struct {
	// number of animals returned
	Limit int `koanf:"limit"`
	// how long a computed trending list is served before being recomputed
	TTL time.Duration `koanf:"ttl"`
	// memory allocated to cached responses
	CacheBytes HumanReadableBytes `koanf:"cache_bytes"`
}

type STRedis struct {
	Endpoint string `koanf:"endpoint"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	// database number animals are stored in
	DB                       int `koanf:"db"`
	MaxRetries               int `koanf:"max_retries"`
	ConnectionTimeoutSeconds int `koanf:"connection_timeout_seconds"`
}

type STStore struct {
	// valid backends: memory, redis
	Backend string  `koanf:"backend"`
	Redis   STRedis `koanf:"redis"`
	// yaml file loaded into an empty store on startup, empty skips seeding
	SeedFile string `koanf:"seed_file"`
}

type STUploads struct {
	// root folder sighting images are written under
	Path string `koanf:"path"`
	// largest accepted upload
	MaxBytes HumanReadableBytes `koanf:"max_bytes"`
	// file extensions accepted before content sniffing
	AllowedExtensions []string `koanf:"allowed_extensions"`
}

type STSettings struct {
	// restapi server will listen for connections from this address
	ListenAddr string `koanf:"listen_addr"`
	// for custom log files, the folder to place these file in
	LogPath string `koanf:"log_path"`
	// zerolog level name
	LogLevel string `koanf:"log_level"`
	// json or console
	LogFormat string `koanf:"log_format"`
	// proxies allowed to set X-Forwarded-For, empty uses the connection address as the voter
	TrustedProxies []string   `koanf:"trusted_proxies"`
	Votes          STVotes    `koanf:"votes"`
	Likes          STLikes    `koanf:"likes"`
	Trending       STTrending `koanf:"trending"`
	Store          STStore    `koanf:"store"`
	Uploads        STUploads  `koanf:"uploads"`
}

var defaults STSettings = STSettings{
	ListenAddr:     ":5000",
	LogPath:        "/tmp/logs/stray-tracker/",
	LogLevel:       "info",
	LogFormat:      "json",
	TrustedProxies: []string{},
	Votes: STVotes{
		FilterCapacity:       10000,
		FilterHashCount:      7,
		FilterRotateInterval: 0, // history is kept until restart unless an operator opts in
	},
	Likes: STLikes{
		RecentCacheBytes: 0, // throttle is off by default
	},
	Trending: STTrending{
		Limit:      5,
		TTL:        5 * time.Minute,
		CacheBytes: HumanToBytesFatal("16Mi"),
	},
	Store: STStore{
		Backend: "memory",
		Redis: STRedis{
			Endpoint:                 "",
			DB:                       0,
			MaxRetries:               3,
			ConnectionTimeoutSeconds: 5,
		},
		SeedFile: "",
	},
	Uploads: STUploads{
		Path:              "/tmp/stray-tracker/static",
		MaxBytes:          HumanToBytesFatal("10Mi"),
		AllowedExtensions: []string{"png", "jpg", "jpeg", "webp"},
	},
}

// envKey maps ST.VOTES.FILTER_CAPACITY and ST__VOTES__FILTER_CAPACITY to votes.filter_capacity.
// Returning an empty key drops the variable.
func envKey(s string) string {
	var rest string
	switch {
	case strings.HasPrefix(s, EnvPrefix+"__"):
		rest = s[len(EnvPrefix)+2:]
	case strings.HasPrefix(s, EnvPrefix+"."):
		rest = s[len(EnvPrefix)+1:]
	default:
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(rest, "__", "."))
}

// ParseSettings overlays environment variables onto the defaults.
func ParseSettings() (*STSettings, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading default settings: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment settings: %w", err)
	}
	parsed := STSettings{}
	err := k.UnmarshalWithConf("", &parsed, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				HumanReadableBytesHookFunc(),
			),
			Result:           &parsed,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return &parsed, nil
}

func setupLoggers(settings *STSettings) {
	setupLogger(settings.LogLevel, settings.LogFormat)
	createFileLoggers(settings.LogPath)
	// Create upload path if it doesn't exist
	if _, err := os.Stat(settings.Uploads.Path); err != nil {
		if os.IsNotExist(err) {
			err = os.MkdirAll(settings.Uploads.Path, 0770)
			if err != nil {
				log.Fatalf("The upload path '%s' could not be created with error: %s", settings.Uploads.Path, err.Error())
			}
		} else {
			log.Fatalf("The upload path '%s' exists but there is an error: %s", settings.Uploads.Path, err.Error())
		}
	}
}

func ResetSettings() {
	var err error
	Settings, err = ParseSettings()
	if err != nil {
		log.Fatalf("invalid settings: %s", err.Error())
	}
	setupLoggers(Settings)
	Votes = &Settings.Votes
	Likes = &Settings.Likes
	Store = &Settings.Store
	Uploads = &Settings.Uploads
}

func init() {
	ResetSettings()
}
