// Package addressbook implements the contact, contact group, membership and
// search operations of the address book.
//
// Every operation is scoped to the requesting user: entities of other users
// are reported exactly like entities that do not exist. Mutations run in a
// single store transaction which also covers the ownership checks of the
// referenced entities, so a rejected request never leaves partial state.
//
// Errors returned to callers are one of
//
//   - *ValidationError, the input was rejected (field name -> messages)
//   - ErrNotFound, an entity addressed by the request is not visible to the user
//   - *NotFoundError, like ErrNotFound but naming the side of a membership that failed
//   - anything else, a store failure
package addressbook
