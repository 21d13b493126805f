/*
Package operation implements the update stages for a CGE export folder.

	+-------------+      +--------------+      +---------------+
	|   Cleanup   | ---> | Source names | ---> | Target names  |
	| (konvert*)  |      | (СвПокуп)    |      | (Покупатель)  |
	+-------------+      +------+-------+      +-------+-------+
	                            |                      |
	                     +------+-------+      +-------+-------+
	                     |  Cross ref   | ---> |   Addresses   |
	                     | КПП -> адрес |      | (Грузополуч.) |
	                     +--------------+      +---------------+

🔄 Flow:
1. Removes konvert* files anywhere under the folder
2. Sets the buyer name in every ON_NSCHFDOPPR document
3. Sets both buyer names in every ON_SCHET document
4. Maps each ON_NSCHFDOPPR consignee КПП to its address
5. Writes that address into the first Грузополучатель block of each
   ON_SCHET document whose КПП is in the map

Stages run strictly one after another. A document counts as changed only if
its content differs afterwards, so a second run over the same folder reports
zeros. A missing pattern is never an error; a file that cannot be decoded or
encoded stops the run.

🔍 Example:

	op, err := operation.New(operation.Options{Config: cfg, Scanner: scanner})
	summary, err := op.Run(ctx, layout.Resolve(ctx, root, cfg.Candidates()))
*/
package operation
