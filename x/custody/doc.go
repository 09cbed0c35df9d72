/*

Package custody implements escrow based conditional payments.

Funds are held in a derived custody account and locked by a claim code
commitment. They can be released to any destination the claimant signs
for by supplying the claim code, returned to the sender by the sender
at any time, or swept back to the sender by anyone once the record
expired.

The algorithm is as follows:
1. Sender generates a claim code and delivers it to the recipient
out of band.
2. Sender makes a Keccak256 hash out of the claim code.
3. With this hash and a fingerprint of the recipient the sender
creates a custody record, funding the derived custody account.
4. The recipient claims the funds by supplying the claim code, if
the record did not expire.
5. The sender can cancel at any time while the record is active.
6. Once expired, anyone can sweep the funds back to the sender.

A settled record is never deleted, it keeps its terminal status so
the (sender, fingerprint) pair cannot be silently reused.

*/
package custody
