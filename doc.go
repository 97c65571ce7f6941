/*
Package vault defines all common interfaces that tie the various
subpackages into one application framework.

The root package declares the contracts between the layers. Transactions
(Tx) carry messages (Msg) that are routed to handlers (Handler), which
read and write application state through an abstract merkle store
(KVStore). Decorators wrap handlers to provide shared functionality such
as signature verification, fee deduction or state savepoints.

Authorization is expressed through conditions. A Condition is a
structured description of who may act, for example a public key holder
or a package controlled account, and an Address is its one way hash as
stored on chain.

Block level information such as height, time and chain id travels
through a context.Context. For every value XYZ of type T supported by
the context there is a pair of functions:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

Extensions may enrich the context with their own keys, as the signature
extension does with the set of conditions that signed the current
transaction.
*/
package vault
