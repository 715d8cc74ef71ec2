/*
Package resilience provides the circuit breaker guarding calls to the accessor.

# States

- Closed: Normal operation, requests pass through
- Open: Accessor considered down, requests fail immediately
- Half-Open: Probing recovery, limited requests allowed

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open

# Classifying errors

Not every error is a fault of the remote side. Settings.IsSuccessful decides
which errors count against the breaker; an access-denied answer is a valid
reply from a healthy accessor and must not open the circuit.

	breaker := resilience.New("accessor", resilience.Settings{
		MaxRequests: 3,
		Timeout:     10 * time.Second,
		IsSuccessful: func(err error) bool {
			return err == nil || status.Code(err) == codes.PermissionDenied
		},
	})

	entries, err := resilience.Call(breaker, func() ([]types.Entry, error) {
		return client.List(ctx, path)
	})
*/
package resilience
