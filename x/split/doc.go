/*
Package split implements distribution of deposited value between a fixed
set of recipients according to percentage shares.

A splitter instance is configured once with recipients whose integer
shares sum to exactly 100 and is immutable afterwards. Each deposit is
divided in recipient declaration order. Because integer division of
amount*share by 100 truncates, every recipient additionally accumulates
the remainder in hundredths of a value unit. Once the accumulated change
of a recipient crosses one hundred, the surplus whole unit is added to the
next payout, so no value is ever lost to rounding, only delayed.

Two delivery modes exist. A push deposit transfers every computed payout
to its recipient within the deposit call. An accrual deposit only credits
internal balances which recipients drain later through withdraw, one
recipient at a time, or disperse, all recipients at once. The withdrawal
path is protected by a per-caller latch rejecting reentrant calls, and a
zero balance withdrawal is a successful no-op so that one empty account
can never block a batch.

Deposited value is held in custody by a pool account derived from the
splitter identifier until it is paid out.
*/
package split
