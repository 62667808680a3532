// Package internaldefs holds the shared metric definitions consumed by the
// exporters under metrics/export.
package internaldefs

import (
	paramhash "github.com/paramhash/paramhash"
)

// CounterDef defines a public type used by paramhash APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   paramhash.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the password-hash framework.
var CounterDefs = []CounterDef{
	{ID: paramhash.MetricLoginSuccess, Name: "paramhash_login_success_total", Help: "Successful login verifications."},
	{ID: paramhash.MetricLoginFailure, Name: "paramhash_login_failure_total", Help: "Failed login verifications."},
	{ID: paramhash.MetricRecordMalformed, Name: "paramhash_record_malformed_total", Help: "Stored records no registered scheme could parse."},
	{ID: paramhash.MetricRehashPerformed, Name: "paramhash_rehash_performed_total", Help: "Records rewritten under current preferred parameters."},
	{ID: paramhash.MetricRehashFailed, Name: "paramhash_rehash_failed_total", Help: "Best-effort rehash attempts that failed."},
	{ID: paramhash.MetricPasswordSet, Name: "paramhash_password_set_total", Help: "Passwords set or reset."},
}
