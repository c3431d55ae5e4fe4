package internal

// Clearable should be implemented by any container stored in a pool. Clear must empty the
// container in place. Containers keep as much backing storage as their structure allows so the
// next borrower reuses it; containers.Queue is the exception, its ring shrinks as it drains.
type Clearable interface {
	Len() int
	Clear()
}

// Passivate empties c if it holds anything. Already-empty containers are left untouched.
func Passivate[C Clearable](c C) {
	if c.Len() > 0 {
		c.Clear()
	}
}
