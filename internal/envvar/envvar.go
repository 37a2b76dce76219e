package envvar

const (
	// ScivisionEnv is the environment variable used to determine the environment
	ScivisionEnv = "SCIVISION_ENV"

	// ScivisionConfig is the environment variable used to locate the config file
	ScivisionConfig = "SCIVISION_CONFIG"

	// ScivisionBaseURL is the environment variable used to override the manifest base URL template
	ScivisionBaseURL = "SCIVISION_BASE_URL"

	// ScivisionLogFile is the environment variable used to override the log file path
	ScivisionLogFile = "SCIVISION_LOG_FILE"
)
