package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrSessionUnavailable       = "launch session unavailable"
	ErrConfirmationRequired     = "refusing to continue without confirmation; pass --yes"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgCancelled                = "Cancelled."
	MsgNothingSelected          = "Nothing selected."
)

// recordRefHelp explains the <ref> argument of the history subcommands.
const recordRefHelp = `<ref> selects a record as shown by 'history list':
  #N        list position N (always a position)
  N         list position N when N has at most three digits and such a
            position exists, otherwise an id prefix
  <id>      full record id or a unique id prefix`

// Path targets accepted by `config game set` and `config game pick`.
var pathTargetNames = []string{"proton", "prefix", "game"}
