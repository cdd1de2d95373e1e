/*

Process of compilation

Program Text ->
	lex ->
Tokens ->
	parse ->
Program (ir) ->
	native translation ->
Native Program ->
	rounds of reorder, rotation merge, cz cancel, deadcode ->
Optimized Program ->
	format ->
Program Text

*/
package compiler
