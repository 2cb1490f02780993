package usecase

import "sync"

// keyedMutex serializa los read-modify-write por factura dentro del proceso.
// Dos AddRow concurrentes sobre la misma factura recalcularían TotalSum en
// carrera; con el candado por id el segundo observa el resultado del primero.
type keyedMutex struct {
	mus sync.Map // id -> *sync.Mutex
}

// Lock toma el candado del id y devuelve la función de liberación.
func (k *keyedMutex) Lock(id string) func() {
	v, _ := k.mus.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
