package config

// Application constants
const (
	AppName    = "wellmech"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces environment overrides, e.g. WELLMECH_WELL_MUD_WEIGHT
	EnvPrefix = "WELLMECH"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogFile   = "logs/wellmech.log"

	// Pipeline defaults
	DefaultKickOffThreshold   = 90.0 // degrees
	DefaultGammaRayCutoff     = 65.0 // API
	DefaultPumpEfficiency     = 0.60
	DefaultUCSMethod          = "pump efficiency"
	DefaultPorosityMethod     = 3
	DefaultPermeabilityMethod = 1

	// Input template workbook
	TemplateBitSheet  = "drilling bit"
	TemplateBitArea   = "Bit area"
	TemplateMudSheet  = "drilling mud"
	TemplateMudWeight = "Mud weight"
	TemplateLogsSheet = "logs"

	DefaultOutputSheet = "curves"
)
