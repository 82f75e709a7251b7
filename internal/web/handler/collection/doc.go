// Package collection serves CRUD routes over one document collection.
//
// One Service is mounted per entity group, e.g. /api/suppliers:
//
//	GET    /      - all documents in insertion order
//	POST   /      - create, answers 201
//	GET    /:id   - one document
//	PUT    /:id   - shallow merge, a null value removes the key
//	DELETE /:id   - remove
//
// Fields hidden by the collection, such as the user password hash, are
// never rendered.
package collection
