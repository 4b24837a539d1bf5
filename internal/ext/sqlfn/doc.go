// Package sqlfn holds the registration plumbing shared by the capability
// modules under internal/ext.
//
// Each module describes its SQL functions as a table of Func values and
// hands the table to Register. Register stops at the first failure and
// reports it; the caller decides whether that failure matters.
//
// Usage:
//
//	func Init(conn sqlfn.Conn) error {
//	    return sqlfn.Register(conn,
//	        sqlfn.Scalar("md5", md5sum),
//	        sqlfn.Aggregate("median", newMedian),
//	    )
//	}
package sqlfn
