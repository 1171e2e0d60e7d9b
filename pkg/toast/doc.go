// Package toast shows transient notifications to a browser session.
//
// A Manager stores each toast, hands it to a Deliverer for the live page
// and removes it again once its duration elapses. Delivery is best effort.
//
//	m := toast.NewManager(toast.NewMemoryStorage(), deliverer)
//	m.Show(ctx, sessionID, toast.New(toast.TypeInfo, "Daten automatisch gespeichert").WithDuration(2*time.Second))
package toast
