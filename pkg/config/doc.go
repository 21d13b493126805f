/*
Package config loads the run configuration for cgefix.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |                       |           |
	+-----+-----+           +----+----+  +----+----+
	|   YAML    |           |   HCL   |  |  JSON   |
	| Parser    |           | Parser  |  | Parser  |
	+-----------+           +---------+  +---------+

🎯 Purpose:
- Picks a parser by file extension
- Fills defaults for every omitted field
- Rejects encodings that are not single-byte charmaps

Without a config file the built-in defaults describe a Moscow CGE export
folder: ON_NSCHFDOPPR*.xml invoices under УПД/Отправляемые, ON_SCHET__*.xml
payment requests under "Счет на оплату/Отправляемые", or both kinds together
under Отправляемые, all in windows-1251.

🔍 Example (.cgefix.yaml):

	target_name: 'ООО &quot;Ромашка&quot;'
	cleanup_prefix: konvert
	source:
	  glob: ON_NSCHFDOPPR*.xml
	  dirs: [УПД/Отправляемые, Отправляемые]

target_name is inserted into documents verbatim, so quotes must already be
written as &quot;.
*/
package config
