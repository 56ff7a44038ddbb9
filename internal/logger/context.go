package logger

// Component-specific logger functions

// Parser returns a logger for entity introspection operations.
func Parser() Logger {
	return WithField("component", "parser")
}

// Schema returns a logger for schema compilation operations.
func Schema() Logger {
	return WithField("component", "schema")
}

// Generator returns a logger for code emission operations.
func Generator() Logger {
	return WithField("component", "generator")
}

// SQL returns a logger for statement building operations.
func SQL() Logger {
	return WithField("component", "sql")
}

// CLI returns a logger for CLI operations.
func CLI() Logger {
	return WithField("component", "cli")
}
