/*
Package cash defines a simple implementation of moving coins
between wallets.

There is no logic in the coins (tokens), except that the balance
of any coin may not go below zero. Thus, this implementation is
referred to as cash. Simple and safe.

Other extensions hold funds by moving them into wallets they
control, such as the custody accounts of the custody extension.
*/
package cash
