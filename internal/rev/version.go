package rev

// CoreVersion is the recalc core version, stamped into journal rows so
// history written by older builds stays attributable.
const CoreVersion = "0.1.0"
