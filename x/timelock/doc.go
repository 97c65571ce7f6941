/*

Package timelock implements time locked fund custody.

A lock takes a deposit from the sender and parks it on a custody
account until a deadline computed from the current block time passed.
Before the deadline only the sender can act, taking the deposit back
with a cancel. Once the deadline was reached only the recipient can
act, collecting the deposit with a release. A released or cancelled
lock is deleted and its identifier never resolves again.

*/
package timelock
