package config

// CD-audio red book limit is 79 minutes 59 seconds of playback.
const defaultCapacitySeconds = 4799

const (
	defaultStagingDir         = "/dev/shm/platter"
	defaultLogDir             = "~/.local/share/platter/logs"
	defaultDatabasePath       = "~/.local/share/platter/library.db"
	defaultMusicDir           = "~/music"
	defaultDevice             = "/dev/sr0"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultDiscTimeoutSeconds = 120
	defaultTranscodeTimeout   = 600
	defaultBurnTimeout        = 3600
)

func defaultExtensions() []string {
	return []string{"mp3", "flac", "ogg", "m4a", "wav", "opus"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir:   defaultStagingDir,
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
		},
		Library: Library{
			MusicDir:   defaultMusicDir,
			Extensions: defaultExtensions(),
		},
		Burner: Burner{
			Device:             defaultDevice,
			Speed:              0,
			Eject:              true,
			CapacitySeconds:    defaultCapacitySeconds,
			WaitForDisc:        true,
			DiscTimeoutSeconds: defaultDiscTimeoutSeconds,
			TranscodeTimeout:   defaultTranscodeTimeout,
			BurnTimeout:        defaultBurnTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
