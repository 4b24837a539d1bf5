// Package database opens SQLite databases through the sqlean driver.
//
// Every connection the pool opens passes through the bundle loader, so the
// functions selected by the SQLEAN_ENABLE* environment variables are
// available to every statement. The pool is limited to one connection.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: "app.db", BusyTimeout: 5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Query(ctx, "select text_reverse('abc')")
package database
